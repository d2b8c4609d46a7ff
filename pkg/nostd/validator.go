package nostd

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// CustomValidator echo 请求校验器，错误信息经过翻译
type CustomValidator struct {
	Validator *validator.Validate
	trans     ut.Translator
}

// NewValidator 创建带英文翻译的校验器
func NewValidator() (*CustomValidator, error) {
	cv := &CustomValidator{Validator: validator.New()}
	if err := cv.TransInit(); err != nil {
		return nil, err
	}
	return cv, nil
}

// TransInit 注册英文翻译
func (cv *CustomValidator) TransInit() error {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(cv.Validator, trans); err != nil {
		return err
	}
	cv.trans = trans
	return nil
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.Validator.Struct(i)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if cv.trans == nil || !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Translate(cv.trans))
	}
	return errors.New(strings.Join(messages, "; "))
}
