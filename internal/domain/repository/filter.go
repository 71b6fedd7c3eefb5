package repository

// ListFilter filtro común para listados paginados. UserID siempre es obligatorio.
type ListFilter struct {
	UserID string
	Search string // coincidencia parcial sin distinguir mayúsculas
	Limit  int
	Offset int
}
