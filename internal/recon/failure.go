package recon

import "fmt"

// FailureCode classifies why a file's reconciliation stopped. Every code
// is per-file and non-fatal to the batch.
type FailureCode string

const (
	FailureIdentification FailureCode = "identification"
	FailureLookup         FailureCode = "lookup"
	FailureCreation       FailureCode = "creation"
	FailureFetch          FailureCode = "fetch"
	FailureCodec          FailureCode = "codec"
	FailureDeclined       FailureCode = "declined"
)

// Failure wraps a per-file error with its classification and the file it
// belongs to.
type Failure struct {
	Code FailureCode
	Path string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s failure", f.Path, f.Code)
	}
	return fmt.Sprintf("%s: %s failure: %v", f.Path, f.Code, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func failure(code FailureCode, path string, err error) *Failure {
	return &Failure{Code: code, Path: path, Err: err}
}
