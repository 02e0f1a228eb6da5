package validate_test

import (
	"testing"

	"github.com/ardanlabs/powledger/business/sys/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type request struct {
	Data string `json:"data" validate:"required,max=16"`
}

func TestCheck(t *testing.T) {
	type table struct {
		name  string
		value request
		field string
	}

	tt := []table{
		{name: "valid", value: request{Data: "payload"}},
		{name: "missing", value: request{}, field: "data"},
		{name: "too-long", value: request{Data: "01234567890123456789"}, field: "data"},
	}

	t.Log("Given the need to validate request models.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen checking the %s model.", testID, tst.name)
			{
				err := validate.Check(tst.value)

				if tst.field == "" {
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould pass validation: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould pass validation.", success, testID)
					continue
				}

				fe := validate.GetFieldErrors(err)
				if fe == nil {
					t.Fatalf("\t%s\tTest %d:\tShould get field errors: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould get field errors.", success, testID)

				if _, exists := fe.Fields()[tst.field]; !exists {
					t.Fatalf("\t%s\tTest %d:\tShould name the %q field: %v", failed, testID, tst.field, fe)
				}
				t.Logf("\t%s\tTest %d:\tShould name the %q field: %s", success, testID, tst.field, fe.Fields()[tst.field])
			}
		}
	}
}
