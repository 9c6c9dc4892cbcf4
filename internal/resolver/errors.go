package resolver

import "fmt"

// ModuleNotFoundError indicates no probe matched the example identifier.
type ModuleNotFoundError struct {
	Identifier string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("could not find module for example '%s'", e.Identifier)
}

// ArtifactNotFoundError indicates a resolved module has no built test artifact.
type ArtifactNotFoundError struct {
	ModuleName string
	Pattern    string
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("no artifact matching '%s' found under module '%s'", e.Pattern, e.ModuleName)
}

// IsModuleNotFound checks if an error is a ModuleNotFoundError.
func IsModuleNotFound(err error) bool {
	_, ok := err.(*ModuleNotFoundError)
	return ok
}

// IsArtifactNotFound checks if an error is an ArtifactNotFoundError.
func IsArtifactNotFound(err error) bool {
	_, ok := err.(*ArtifactNotFoundError)
	return ok
}
