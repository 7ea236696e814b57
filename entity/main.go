package entity

// Models lists every table in migration order: referenced tables first.
func Models() []interface{} {
	return []interface{}{
		&Region{},
		&WaterSource{},
		&Measure{},
		&Indicator{},
		&User{},
	}
}
