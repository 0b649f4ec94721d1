package services

import "errors"

var (
	// ErrValidation — в запросе не хватает обязательных полей либо нарушены лимиты.
	ErrValidation = errors.New("ошибка валидации")
	// ErrForbidden — учётные данные верны, но прав недостаточно.
	ErrForbidden = errors.New("доступ запрещён")
)
