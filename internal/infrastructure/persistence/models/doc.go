// Package models contains GORM persistence models that map to database tables.
// Models are kept apart from domain entities so the domain layer carries no
// ORM tags. Mappers validate each row on the way out: a row that cannot form
// a valid domain record yields shared.ErrSchema instead of leaking raw data.
package models
