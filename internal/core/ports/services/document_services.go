package services

import "context"

// DocumentSvcFacade uploads deed and report blobs to the external store and
// hands back opaque reference URLs. Workflow operations only ever carry the
// references.
type DocumentSvcFacade interface {
	UploadDocument(ctx context.Context, filename string, content []byte) (string, error)
}
