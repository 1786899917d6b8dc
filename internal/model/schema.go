package model

// Schema lists every table owned by the relational store, in migration order.
func Schema() []interface{} {
	return []interface{}{
		&User{},
		&UserProvider{},
		&RepresentativeContact{},
		&ActivityLog{},
		&ArchivedDocument{},
	}
}
