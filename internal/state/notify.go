package state

import (
	"strings"
	"sync"
	"time"
)

// Severity определяет важность уведомления.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
)

// Notification — текущее состояние уведомления пользователю.
type Notification struct {
	Message        string
	Severity       Severity
	Visible        bool
	ShouldRedirect bool
}

// Notifier реализует срез уведомлений: Hidden → Visible → (таймаут | явное
// скрытие) → Hidden. Живо не больше одного уведомления: новый показ при
// видимом уведомлении перезаписывает его и перезапускает таймер.
type Notifier struct {
	mu      sync.Mutex
	current Notification
	ttl     time.Duration
	timer   *time.Timer
	gen     uint64
	signal  func()
}

func newNotifier(ttl time.Duration, signal func()) *Notifier {
	return &Notifier{ttl: ttl, signal: signal}
}

func (n *Notifier) emit() {
	if n.signal != nil {
		n.signal()
	}
}

// Current возвращает текущее состояние уведомления.
func (n *Notifier) Current() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// ShowError показывает уведомление об ошибке.
func (n *Notifier) ShowError(message string) {
	n.show(SeverityError, message)
}

// ShowWarning показывает предупреждение.
func (n *Notifier) ShowWarning(message string) {
	n.show(SeverityWarning, message)
}

// ShowSuccess показывает уведомление об успехе.
func (n *Notifier) ShowSuccess(message string) {
	n.show(SeveritySuccess, message)
}

// ShowInfo показывает информационное уведомление.
func (n *Notifier) ShowInfo(message string) {
	n.show(SeverityInfo, message)
}

// Dismiss скрывает уведомление и отменяет таймер автоскрытия.
// Отменённый таймер не срабатывает позже.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.hideLocked()
	n.mu.Unlock()
	n.emit()
}

func (n *Notifier) show(severity Severity, rawMessage string) {
	message, shouldRedirect := classifyMessage(rawMessage)

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}

	n.gen++
	gen := n.gen

	n.current = Notification{
		Message:        message,
		Severity:       severity,
		Visible:        true,
		ShouldRedirect: shouldRedirect,
	}

	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(gen)
	})
	n.mu.Unlock()
	n.emit()
}

// expire скрывает уведомление по таймеру. Поколение защищает от позднего
// срабатывания таймера после явного скрытия или нового показа.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || !n.current.Visible {
		n.mu.Unlock()
		return
	}
	n.hideLocked()
	n.mu.Unlock()
	n.emit()
}

func (n *Notifier) hideLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.current = Notification{}
}

// classifyMessage переводит сырое сообщение ошибки в текст для пользователя
// и определяет, требуется ли разбор сессии с переходом на экран входа.
func classifyMessage(raw string) (string, bool) {
	lower := strings.ToLower(raw)

	switch {
	case strings.Contains(lower, "session expired"):
		return "Your session has expired. Please sign in again.", true
	case strings.Contains(lower, "unauthorized"):
		return "You need to sign in to continue.", true
	case strings.Contains(lower, "network error"):
		return "Could not reach the server. Check your connection.", false
	default:
		return raw, false
	}
}
