// Package carbon is a client for the UK National Grid ESO Carbon
// Intensity API (https://api.carbonintensity.org.uk). The API is
// unauthenticated; responses carry half-hourly intensity periods and
// generation-mix breakdowns, nationally or per postcode district.
package carbon
