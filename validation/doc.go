// Package validation checks descriptors and configuration before use.
//
// Struct tag validation runs go-playground/validator and reports failures
// as an invalid-descriptor *errors.AppError listing every offending field:
//
//	type Call struct {
//	    URL string `yaml:"url" validate:"required,url"`
//	}
//	err := validation.Validate(call)
//
// Custom tags for closed enumerations are added with RegisterRule.
//
// Programmatic validation collects field errors and reports them at once:
//
//	v := validation.New("session")
//	v.Positive("max_concurrent", cfg.MaxConcurrent)
//	err := v.Err()
package validation
