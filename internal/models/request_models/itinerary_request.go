package request_models

type LatLngRequest struct {
	Lat float64 `json:"lat" binding:"min=-90,max=90"`
	Lng float64 `json:"lng" binding:"min=-180,max=180"`
}

type CreateItineraryRequest struct {
	Destination   string         `json:"destination" binding:"required"`
	Preferences   []string       `json:"preferences"`
	Days          int            `json:"days" binding:"required,min=1,max=14"`
	StartLocation *LatLngRequest `json:"start_location"`
	// TransportType is one of walking, driving, transit. Empty uses the server default.
	TransportType string `json:"transport_type" binding:"omitempty,oneof=walking driving transit"`
}
