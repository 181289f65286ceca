package requests

type BookSlot struct {
	SlotID string `json:"slot_id" validate:"required,len=24"`
	Notes  string `json:"notes" validate:"omitempty,max=500"`
}
