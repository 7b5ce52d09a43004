package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/umay/models"
)

var roleTitles = map[models.Role]string{
	models.RoleUser:    "пользователь",
	models.RoleMidwife: "акушерка",
	models.RoleManager: "руководитель",
	models.RoleAdmin:   "администратор",
}

// verificationLink builds the link that consumes token.
func verificationLink(publicURL, token string, purpose models.TokenPurpose) string {
	path := "/api/auth/verify"
	if purpose == models.PurposePasswordReset {
		path = "/api/auth/password/reset"
	}
	return strings.TrimRight(publicURL, "/") + path + "?token=" + url.QueryEscape(token)
}

func verificationMessage(publicURL, token string, role models.Role, appType models.AppType, purpose models.TokenPurpose) (subject, text string) {
	link := verificationLink(publicURL, token, purpose)

	if purpose == models.PurposePasswordReset {
		return "UMAY: восстановление пароля",
			"Для смены пароля перейдите по ссылке:\n" + link + "\n\nЕсли вы не запрашивали восстановление, проигнорируйте это письмо."
	}

	if appType == models.AppMama {
		return "UMAY Mama: подтверждение email",
			"Добро пожаловать в UMAY Mama!\nПодтвердите адрес электронной почты по ссылке:\n" + link
	}

	title, ok := roleTitles[role]
	if !ok {
		title = string(role)
	}
	return "UMAY: подтверждение учетной записи",
		fmt.Sprintf("Создана учетная запись сотрудника (роль: %s).\nПодтвердите адрес электронной почты по ссылке:\n%s", title, link)
}

func otpText(code string, purpose models.TokenPurpose, ttl time.Duration) string {
	action := "входа"
	if purpose == models.PurposePasswordReset {
		action = "смены пароля"
	}
	return fmt.Sprintf("UMAY: код для %s %s. Действует %d мин.", action, code, int(ttl.Minutes()))
}
