package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/wneessen/go-mail"
)

// SendWelcomeEmail envoie le mail de bienvenue à la première connexion.
// Best-effort : appelé en goroutine, l'échec est seulement loggé.
func SendWelcomeEmail(user models.User) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST absent — mail de bienvenue ignoré")
		return nil
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@puntog.shop"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(user.Email); err != nil {
		return err
	}
	msg.Subject("Bienvenue sur Punto G")
	msg.SetBodyString(mail.TypeTextHTML, welcomeHTML(user))

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi du mail de bienvenue à", user.Email)
	return client.DialAndSend(msg)
}

func welcomeHTML(user models.User) string {
	name := user.GivenName
	if name == "" {
		name = user.Name
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head>
	<meta charset="UTF-8">
	<title>Bienvenido</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">¡Bienvenido a Punto G, %s!</h2>
		<p>Tu cuenta fue creada con éxito. Ya puedes marcar tus productos favoritos
		y encontrarlos en cualquier momento desde tu perfil.</p>
		<p style="margin-top: 20px;">
			<a href="%s" style="background-color: #e91e63; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">
				Ver el catálogo
			</a>
		</p>
	</div>
</body>
</html>`, name, baseURL())
}

func baseURL() string {
	u := os.Getenv("BASE_URL")
	if u == "" {
		return "http://localhost:8080"
	}
	return u
}
