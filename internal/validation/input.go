// Package validation содержит проверки пользовательского ввода,
// выполняемые до отправки запроса на сервер.
package validation

import "strings"

// IsValidEmail проверяет базовую форму адреса электронной почты.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) < 3 || len(email) > 254 {
		return false
	}

	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.IndexByte(email[at+1:], '@') != -1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return !strings.ContainsAny(email, " \t\r\n")
}

// IsValidPhone проверяет телефонный номер: от 10 до 15 цифр,
// допускается ведущий плюс и разделители в виде пробелов, скобок и дефисов.
func IsValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	if phone[0] == '+' {
		phone = phone[1:]
	}

	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}

	return digits >= 10 && digits <= 15
}
