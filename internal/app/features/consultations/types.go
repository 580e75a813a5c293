// internal/app/features/consultations/types.go
package consultations

import "github.com/dalemusser/consultadmin/internal/domain/models"

// listResponse is the body of GET /list. Items is never null.
type listResponse struct {
	Items []models.Record `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// detailResponse is the body of GET /detail.
type detailResponse struct {
	Item models.Record `json:"item"`
}

// deleteResponse is the success body of DELETE /delete.
type deleteResponse struct {
	Success   bool   `json:"success"`
	DeletedID string `json:"deletedId"`
}
