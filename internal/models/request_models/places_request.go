package request_models

type SearchPlacesQuery struct {
	Query       string   `form:"query" binding:"required"`
	Lat         *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Lng         *float64 `form:"lng" binding:"omitempty,min=-180,max=180"`
	Radius      *float64 `form:"radius" binding:"omitempty,gt=0"`
	Preferences string   `form:"preferences"`
}

type RegionPlacesQuery struct {
	Preferences string `form:"preferences"`
	Limit       int    `form:"limit,default=10" binding:"min=1,max=100"`
}
