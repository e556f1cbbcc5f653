package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Ошибки справочных данных: несуществующий департамент или категория -
// это ошибка клиента/данных, а не вариация пользовательского ввода
var (
	ErrDepartmentNotFound = errors.New("департамент не найден")
	ErrCategoryNotFound   = errors.New("категория бюджета не найдена")
)

// ValidationErrors набор ошибок по полям при создании заявки.
// Возвращается как значение, а не паника: невалидный ввод - ожидаемая ситуация.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "ошибки валидации: " + strings.Join(parts, "; ")
}

// AmountMismatchError расхождение между заявленной суммой и суммой позиций
type AmountMismatchError struct {
	Expected float64 // Сумма, рассчитанная по позициям
	Actual   float64 // Заявленная сумма
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("заявленная сумма %.2f не совпадает с суммой позиций %.2f", e.Actual, e.Expected)
}

// InvalidTransitionError попытка отправить заявку не из статуса черновика
type InvalidTransitionError struct {
	Current string // Текущий статус заявки
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("отправить можно только черновик, текущий статус: %s", e.Current)
}

// Категории незаполненных данных при отправке заявки
const (
	IncompleteFields    = "обязательные поля"
	IncompleteDates     = "сроки выполнения"
	IncompleteSubmitter = "данные отправителя"
)

// IncompleteRequestError черновик не готов к отправке
type IncompleteRequestError struct {
	Reason string
}

func (e *IncompleteRequestError) Error() string {
	return "заявка не заполнена: " + e.Reason
}
