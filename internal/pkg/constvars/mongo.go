package constvars

const (
	MongoCollectionUsers           = "users"
	MongoCollectionSlots           = "slots"
	MongoCollectionAppointments    = "appointments"
	MongoCollectionRecurrencePlans = "recurrence_plans"
	MongoCollectionInsurances      = "insurances"
)
