package validationx

import (
	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
)

var (
	EmailRules = []validation.Rule{
		validation.Required,
		is.Email,
		validation.Length(5, 255),
	}

	PhoneRules = []validation.Rule{
		validation.Required,
		validation.Length(8, 16),
		IsPhone,
	}

	NameRules = []validation.Rule{
		validation.Required,
		validation.Length(1, 150),
		IsPersonName,
	}

	PasswordRules = []validation.Rule{
		validation.Required,
		validation.Length(8, 128),
		PasswordFormat,
	}

	CurrencyRules = []validation.Rule{
		validation.Required,
		validation.Length(3, 3),
		IsCurrencyCode,
	}
)
