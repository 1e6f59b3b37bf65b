// Package models holds the GORM persistence models and their conversions to
// and from the domain aggregates.
package models
