package models

// Requests for fixture HTTP endpoints. Seed and Length are pointers so
// an explicit zero is distinguishable from an omitted parameter; the
// defaults only fill absent fields.

type SeriesRequest struct {
	Seed   *int64 `query:"seed" json:"seed" default:"42" validate:"required,gte=0"`
	Length *int   `query:"length" json:"length" default:"365" validate:"required,gte=1,lte=36500"`
	Start  string `query:"start" json:"start" default:"2023-01-01" validate:"datetime=2006-01-02"`
}

type RunRequest struct {
	Seed   *int64 `json:"seed" default:"42" validate:"required,gte=0"`
	Length *int   `json:"length" default:"365" validate:"required,gte=1,lte=36500"`
	Start  string `json:"start" default:"2023-01-01" validate:"datetime=2006-01-02"`
}

type StreamRequest struct {
	Seed   *int64 `query:"seed" json:"seed" default:"42" validate:"required,gte=0"`
	Length *int   `query:"length" json:"length" default:"365" validate:"required,gte=1,lte=36500"`
	Start  string `query:"start" json:"start" default:"2023-01-01" validate:"datetime=2006-01-02"`
}
