package dto

// UploadDocumentResponse returns the opaque reference of an uploaded blob.
type UploadDocumentResponse struct {
	Ref string `json:"ref"`
}
