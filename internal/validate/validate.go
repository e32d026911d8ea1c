package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"demo/foodorders/internal/model"
)

var (
	reOrderID = regexp.MustCompile(`^[0-9]{1,6}$`)
	reItem    = regexp.MustCompile(`^[A-Za-z\s]{1,30}$`)
)

// ErrInvalid matches every error returned by this package.
var ErrInvalid = errors.New("invalid order")

type multiErr []error

func (m multiErr) Error() string {
	var b strings.Builder
	for i, e := range m {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

func (m multiErr) Is(target error) bool { return target == ErrInvalid }

func (m multiErr) Unwrap() []error { return m }

func (m multiErr) OrNil() error {
	if len(m) == 0 {
		return nil
	}
	return m
}

func ValidOrderID(s string) bool { return reOrderID.MatchString(s) }

func ValidItem(s string) bool { return reItem.MatchString(s) }

func ValidateOrderID(id string) error {
	var errs multiErr
	errs = checkOrderID(errs, id)
	return errs.OrNil()
}

func ValidateOrder(o model.Order) error {
	var errs multiErr
	errs = checkOrderID(errs, o.OrderID)

	switch {
	case o.Item == "":
		errs = append(errs, errors.New("item: required"))
	case !ValidItem(o.Item):
		errs = append(errs, fmt.Errorf("item: must be 1-30 letters or spaces"))
	}

	return errs.OrNil()
}

func checkOrderID(errs multiErr, id string) multiErr {
	switch {
	case id == "":
		return append(errs, errors.New("orderId: required"))
	case !ValidOrderID(id):
		return append(errs, fmt.Errorf("orderId: must be 1-6 digits"))
	}
	return errs
}
