// Package models contains the GORM persistence models for all domain
// entities. Table names follow the legacy store schema, so they stay
// compatible with data migrated from earlier deployments.
package models
