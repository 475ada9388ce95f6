package repository

// Models lists every GORM model, for development auto-migration.
func Models() []interface{} {
	return []interface{}{&UserModel{}, &SubscriptionModel{}, &ReviewModel{}}
}
