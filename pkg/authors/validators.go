package authors

// CreateAuthorPayload is the request body for creating an author.
type CreateAuthorPayload struct {
	Name string `json:"name" mod:"trim" validate:"required,min=1,max=300"`
}
