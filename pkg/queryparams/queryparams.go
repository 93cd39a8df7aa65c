// pkg/queryparams/queryparams.go
// Listeleme uçlarının ortak sayfalama/sıralama sözleşmesi.
package queryparams

// Varsayılan sayfalama değerleri
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
	DefaultSortBy  = "created_at"
	DefaultOrderBy = "desc"
)

// ListParams handler'ların query string'den parse ettiği liste parametreleridir.
type ListParams struct {
	Name    string `query:"name"`   // İsim araması (kayıtlar için ad/soyad)
	Status  string `query:"status"` // Durum filtresi (şimdilik kullanılmıyor)
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"` // asc | desc
}

// Validate eksik veya taşan değerleri varsayılanlara çeker.
func (p *ListParams) Validate() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.PerPage <= 0 || p.PerPage > MaxPerPage {
		p.PerPage = DefaultPerPage
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
}

// CalculateOffset SQL OFFSET değerini hesaplar.
func (p *ListParams) CalculateOffset() int {
	page := p.Page
	if page <= 0 {
		page = DefaultPage
	}
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return (page - 1) * perPage
}

// CalculateTotalPages toplam sayfa sayısını hesaplar.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(totalItems) / perPage
	if int(totalItems)%perPage != 0 {
		pages++
	}
	return pages
}

// PaginationMeta liste yanıtlarının sayfalama üst verisidir.
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

// PaginatedResult veri + meta ikilisidir.
type PaginatedResult struct {
	Data interface{}    `json:"data"`
	Meta PaginationMeta `json:"meta"`
}
