// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/internal/store"
)

// ErrUserQuit is returned by the login flow when the user leaves it.
var ErrUserQuit = errors.New("вышел из программы")

var userMessages = []struct {
	target  error
	message string
}{
	{service.ErrServerUnavailable, "Отсутствует сеть или Сервер недоступен"},
	{service.ErrNotLoggedIn, "Сессия истекла, войдите снова"},
	{service.ErrTokenIsExpiredOrInvalid, "Сессия истекла, войдите снова"},
	{service.ErrWrongPassword, "Неверный email или пароль"},
	{store.ErrEmailAlreadyExists, "Пользователь с таким email уже существует"},
	{store.ErrSelfFollow, "Нельзя подписаться на себя"},
	{service.ErrEmptyPost, "Пост должен содержать текст или файл"},
	{service.ErrEmptyComment, "Комментарий пуст"},
	{service.ErrMediaTooLarge, "Файл слишком большой"},
	{service.ErrForbidden, "Недостаточно прав"},
	{service.ErrNotFound, "Не найдено"},
	{service.ErrSubscriptionFailed, "Обновления в реальном времени недоступны"},
	{service.ErrFetchFailed, "Не удалось загрузить данные"},
	{service.ErrMutationRejected, "Изменение отклонено"},
	{service.ErrInvalidDataProvided, "Некорректные данные"},
}

// userMessage returns the text shown to the user for err.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range userMessages {
		if errors.Is(err, m.target) {
			return m.message
		}
	}

	return humanizeServerUnavailableError(err)
}

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
