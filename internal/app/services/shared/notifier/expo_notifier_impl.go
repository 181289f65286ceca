package notifier

import (
	"bytes"
	"context"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type expoNotifier struct {
	client  *http.Client
	limiter *rate.Limiter
	url     string
	Log     *zap.Logger
}

type expoPushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// NewExpoNotifier builds a push client for the Expo push HTTP API. Outbound
// sends are throttled by a token bucket so a large reminder batch cannot
// hammer the provider.
func NewExpoNotifier(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PushNotifier {
	return &expoNotifier{
		client: &http.Client{
			Timeout: internalConfig.Push.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(internalConfig.Push.RatePerSecond), internalConfig.Push.Burst),
		url:     internalConfig.Push.ExpoURL,
		Log:     logger,
	}
}

func (n *expoNotifier) Send(ctx context.Context, pushToken, title, body string, data map[string]string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return exceptions.ErrPushSend(err)
	}

	payload, err := json.Marshal(expoPushMessage{
		To:    pushToken,
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := n.client.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		n.Log.Error("expoNotifier.Send provider rejected the push",
			zap.String(constvars.LoggingPushTargetKey, pushToken),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return exceptions.ErrPushSend(nil)
	}

	return nil
}
