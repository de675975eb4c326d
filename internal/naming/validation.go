package naming

import (
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"

	"github.com/relstack/relstack/domain/model"
)

func validateDNS1123Label(name, labelKind string) error {
	if name == "" {
		return model.InvalidIdentifierError{Name: name, Reason: labelKind + " name must not be empty"}
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return model.InvalidIdentifierError{Name: name, Reason: strings.Join(errs, ", ")}
	}
	return nil
}

// ValidateReleaseName checks that a release name can appear as a DNS label segment.
func ValidateReleaseName(name string) error {
	return validateDNS1123Label(name, "release")
}

// ValidateComponentName checks that a component name can appear as a DNS label segment.
func ValidateComponentName(name string) error {
	return validateDNS1123Label(name, "component")
}
