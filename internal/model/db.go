package model

// Models lists every table migrated at boot.
func Models() []any {
	return []any{
		&User{},
		&Product{},
		&Category{},
		&Order{},
		&OrderItem{},
		&UserAsset{},
		&Proposal{},
		&Update{},
		&Settings{},
	}
}
