package content

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyTopic 主题为空或只有空白
var ErrEmptyTopic = errors.New("topic is empty")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Validate 校验表单。主题为空时返回 ErrEmptyTopic，其余字段不合法时返回字段错误。
func (f FormInput) Validate() error {
	err := getValidator().Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("校验表单失败: %w", err)
	}
	for _, fe := range verrs {
		if fe.Field() == "Topic" {
			return ErrEmptyTopic
		}
	}
	fe := verrs[0]
	return fmt.Errorf("invalid %s %q", fe.Field(), fe.Value())
}
