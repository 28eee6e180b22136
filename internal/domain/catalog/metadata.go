package catalog

// Metadata describes the position of a page within the filtered set.
type Metadata struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// NewMetadata computes pagination metadata from the total count of the
// filtered set, counted before the page slice was taken.
func NewMetadata(page, size, total int) Metadata {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return Metadata{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalCount:  total,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}
