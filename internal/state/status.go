// Package state реализует слой синхронизации состояния клиента витрины:
// срезы предметных областей, корневой контейнер и срез уведомлений.
//
// Каждая асинхронная операция среза проходит единый трёхфазный жизненный цикл
// pending/fulfilled/rejected. Перед началом операции флаги предыдущего
// завершения сбрасываются, поэтому после завершения ровно один из флагов
// IsSuccess/IsError установлен, а IsLoading снят.
//
// Операции внутри одного среза не сериализуются: при конкурентных вызовах
// состояние перезаписывает последний завершившийся ответ.
package state

import (
	"context"
	"sync"

	"github.com/mmeshcher/storefront-client/internal/api"
)

// Status содержит флаги жизненного цикла асинхронных операций среза.
type Status struct {
	IsLoading bool
	IsSuccess bool
	IsError   bool
	Message   string
}

// lifecycle реализует трёхфазный жизненный цикл, общий для всех срезов.
type lifecycle struct {
	mu     sync.Mutex
	status Status
	signal func()
}

func (l *lifecycle) emit() {
	if l.signal != nil {
		l.signal()
	}
}

// begin переводит срез в фазу pending и сбрасывает флаги предыдущего завершения.
func (l *lifecycle) begin() {
	l.mu.Lock()
	l.status = Status{IsLoading: true}
	l.mu.Unlock()
	l.emit()
}

// fail переводит срез в фазу rejected с извлечённым текстом ошибки.
func (l *lifecycle) fail(err error) error {
	l.mu.Lock()
	l.status = Status{IsError: true, Message: api.ErrorMessage(err)}
	l.mu.Unlock()
	l.emit()
	return err
}

// succeed переводит срез в фазу fulfilled и применяет правило согласования
// под той же блокировкой, что и смена статуса.
func (l *lifecycle) succeed(apply func()) {
	l.mu.Lock()
	l.status = Status{IsSuccess: true}
	if apply != nil {
		apply()
	}
	l.mu.Unlock()
	l.emit()
}

// Status возвращает текущие флаги жизненного цикла среза.
func (l *lifecycle) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Reset сбрасывает флаги и сообщение среза. Аналог локального действия reset,
// которым экран очищает следы предыдущей операции.
func (l *lifecycle) Reset() {
	l.mu.Lock()
	l.status = Status{}
	l.mu.Unlock()
	l.emit()
}

// runOp выполняет одну асинхронную операцию среза: pending, сетевой вызов вне
// блокировки, затем fulfilled с применением правила согласования либо rejected.
func runOp[T any](ctx context.Context, l *lifecycle, fetch func(context.Context) (T, error), apply func(T)) error {
	l.begin()

	value, err := fetch(ctx)
	if err != nil {
		return l.fail(err)
	}

	l.succeed(func() {
		if apply != nil {
			apply(value)
		}
	})
	return nil
}
