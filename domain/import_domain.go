package domain

import "fmt"

const (
	ImportStatusLoaded ImportStatus = "loaded"
	ImportStatusEmpty  ImportStatus = "empty"
	ImportStatusFailed ImportStatus = "failed"
)

var (
	MessageImportEmpty = "No data found from API."
)

type (
	ImportStatus string

	// ExternalRecipesResponse is the document served by the upstream recipes endpoint.
	ExternalRecipesResponse struct {
		Recipes []Recipe `json:"recipes"`
		Total   int      `json:"total"`
		Skip    int      `json:"skip"`
		Limit   int      `json:"limit"`
	}

	ImportResult struct {
		Status  ImportStatus `json:"status"`
		Message string       `json:"message"`
		Loaded  int          `json:"loaded"`
	}
)

func ImportLoaded(n int) ImportResult {
	return ImportResult{
		Status:  ImportStatusLoaded,
		Message: fmt.Sprintf("Successfully loaded %d recipes into the DB.", n),
		Loaded:  n,
	}
}

func ImportEmpty() ImportResult {
	return ImportResult{Status: ImportStatusEmpty, Message: MessageImportEmpty}
}

func ImportFailed(loaded int, err error) ImportResult {
	return ImportResult{
		Status:  ImportStatusFailed,
		Message: "Error loading data: " + err.Error(),
		Loaded:  loaded,
	}
}
