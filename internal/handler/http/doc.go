// Package http implements the HTTP transport layer of the application.
//
// It exposes the chi routes of the UMAY JSON API: accounts, birth records,
// reports and the Mama content feeds. Authentication, request tracing,
// access logging and response compression run as middleware before requests
// reach the service layer.
package http
