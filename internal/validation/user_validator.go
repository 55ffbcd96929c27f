package validation

// SignUpFields is the raw sign-up form.
type SignUpFields struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	TimeZone        string
}

// UserValidator provides validation for account forms
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator(v *Validator) *UserValidator {
	if v == nil {
		v = NewValidator()
	}
	return &UserValidator{validator: v}
}

// ValidateSignUp validates every sign-up field and reports all problems at once
func (uv *UserValidator) ValidateSignUp(f SignUpFields) error {
	validationError := NewValidationError()

	switch {
	case f.Username == "":
		validationError.AddRequiredError("username")
	case !uv.validator.IsValidStringLength(f.Username, usernameMinLength, usernameMaxLength):
		validationError.AddInvalidLengthError("username", f.Username, usernameMinLength, usernameMaxLength)
	case !uv.validator.IsValidUsername(f.Username):
		validationError.AddInvalidCharacterError("username", f.Username)
	}

	switch {
	case f.Email == "":
		validationError.AddRequiredError("email")
	case !uv.validator.IsValidEmail(f.Email):
		validationError.AddInvalidFormatError("email", f.Email, "name@example.com")
	}

	validationError.Merge(uv.validatePassword(f.Password))
	if f.Password != f.PasswordConfirm {
		validationError.AddMismatchError("password_confirm", "password")
	}

	if f.TimeZone != "" && !uv.validator.IsValidTimeZone(f.TimeZone) {
		validationError.AddInvalidValueError("time_zone", f.TimeZone, "unknown time zone")
	}

	return validationError.ErrOrNil()
}

// ValidateSettings validates a time zone and project order change
func (uv *UserValidator) ValidateSettings(timeZone, projectOrder string) error {
	validationError := NewValidationError()

	if !uv.validator.IsValidTimeZone(timeZone) {
		validationError.AddInvalidValueError("time_zone", timeZone, "unknown time zone")
	}
	if !uv.validator.IsValidProjectOrder(projectOrder) {
		validationError.AddInvalidValueError("project_order", projectOrder, "must be name, total_time or recent_activity")
	}

	return validationError.ErrOrNil()
}

// validatePassword never echoes the password back in the error value
func (uv *UserValidator) validatePassword(password string) error {
	validationError := NewValidationError()

	switch {
	case password == "":
		validationError.AddRequiredError("password")
	case len([]rune(password)) < passwordMinLength:
		validationError.AddError("password", ErrorTypeInvalidLength, "password must be at least 8 characters long", nil)
	case len(password) > passwordMaxBytes:
		validationError.AddError("password", ErrorTypeInvalidLength, "password must be at most 72 bytes long", nil)
	}

	return validationError.ErrOrNil()
}
