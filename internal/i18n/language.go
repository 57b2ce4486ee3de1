package i18n

import (
	"fmt"
	"strings"

	apperrors "print3d-service/pkg/errors"
)

// Language - закрытый набор языков интерфейса.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
	ZH Language = "zh"
)

var Languages = []Language{RU, EN, ZH}

const DefaultLanguage = RU

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case RU:
		return RU, nil
	case EN:
		return EN, nil
	case ZH:
		return ZH, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownLanguage, s)
}

func (l Language) String() string { return string(l) }
