package response_models

import "tripmate/internal/models/domain_models"

type PlacesResponse struct {
	Query  string                           `json:"query,omitempty"`
	Region string                           `json:"region,omitempty"`
	Count  int                              `json:"count"`
	Places []domain_models.RecommendedPlace `json:"places"`
}
