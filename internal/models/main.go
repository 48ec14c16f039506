// Package models defines the core data structures shared by the API server
// and the admin client: staff identities, stored files, and auth payloads.
package models

import "time"

// Admin represents an administrator account able to log into the API.
type Admin struct {
	// ID is the unique identifier for the admin.
	ID int64
	// Username is the login name of the admin.
	Username string
	// PasswordHash is the bcrypt hash of the admin's password.
	PasswordHash string
}

// Personal represents a staff identity ("personal") record.
//
// Dates are carried as ISO calendar dates (YYYY-MM-DD) on the wire;
// FechaBaja is set only once the record has been soft-deleted.
type Personal struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`
	// Nombre is the full name of the staff member.
	Nombre string `json:"nombre"`
	// Cargo is the role or title.
	Cargo string `json:"cargo"`
	// Descripcion is a short free-text description.
	Descripcion string `json:"descripcion"`
	// FotoURL is the storable reference to the profile photo, if any.
	FotoURL string `json:"foto_url"`
	// CVURL is the storable reference or external link to the CV, if any.
	CVURL string `json:"cv_url"`
	// ORCID is the optional ORCID identifier.
	ORCID string `json:"orcid"`
	// Email is the contact email address.
	Email string `json:"email"`
	// FechaAlta is the onboarding date (YYYY-MM-DD).
	FechaAlta string `json:"fecha_alta"`
	// FechaBaja is the offboarding date set by a soft delete (YYYY-MM-DD).
	FechaBaja string `json:"fecha_baja,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Archivo represents an uploaded file registered by the server.
type Archivo struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`
	// Nombre is the original filename supplied by the client.
	Nombre string `json:"nombre"`
	// Ruta is the storable reference used to populate foto_url / cv_url.
	Ruta string `json:"ruta"`
	// Tipo is the MIME type reported at upload time.
	Tipo string `json:"tipo,omitempty"`
	// Tamano is the size of the stored file in bytes.
	Tamano int64 `json:"tamano,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// LoginRequest is the JSON payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the JSON response for a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
