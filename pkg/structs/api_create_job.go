package structs

type CreateJobRequest struct {
	Prompt string `json:"prompt"`
	Style  Style  `json:"style"`
}
