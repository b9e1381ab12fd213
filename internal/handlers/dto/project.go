package dto

type CreateProjectRequest struct {
	Title      string   `json:"title" binding:"required,min=1,max=200"`
	Teaser     string   `json:"teaser"`
	Categories []string `json:"categories"`
	Status     string   `json:"status" binding:"required,oneof=open seeking_help offering_help"`
}
