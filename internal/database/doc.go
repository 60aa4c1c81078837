// Package database provides PostgreSQL connectivity and the feedback
// record repository.
//
// Uses pgx for connection pooling and tern for embedded migrations.
// FeedbackRepo implements domain.RecordStore and publishes a change
// notification after every committed write.
package database
