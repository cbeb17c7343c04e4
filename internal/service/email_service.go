package service

import (
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net/mail"
	"net/smtp"
	"photo-shake-server/internal/config"
	"strings"
	"time"
)

// SendVerificationEmail 发送注册验证邮件。未配置 SMTP 时静默跳过。
func SendVerificationEmail(toEmail, username, verifyUrl string) error {
	cfg := config.Get()
	if cfg.SMTP.Host == "" {
		return nil
	}

	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)

	subject := "欢迎注册 PhotoShake - 请验证您的邮箱"
	body := fmt.Sprintf(`
		<h1>欢迎加入 PhotoShake，%s</h1>
		<p>请点击链接验证邮箱: <a href="%s">%s</a></p>
	`, username, verifyUrl, verifyUrl)

	fromHeader, fromAddr, err := parseAddressForHeader(cfg.SMTP.From)
	if err != nil {
		return err
	}
	toHeader, toAddr, err := parseAddressForHeader(toEmail)
	if err != nil {
		return err
	}

	msg, err := buildEmailMessage(fromHeader, toHeader, subject, body)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)

	// 如果配置了 SSL (通常是端口 465)，需要使用 tls 连接
	if cfg.SMTP.SSL {
		return sendMailWithSSL(addr, auth, fromAddr, []string{toAddr}, msg)
	}

	// 默认使用 STARTTLS (通常是端口 587 或 25)
	return smtp.SendMail(addr, auth, fromAddr, []string{toAddr}, msg)
}

func sendMailWithSSL(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	cfg := config.Get()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         cfg.SMTP.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		log.Printf("[Email] TLS 连接失败: %v", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, cfg.SMTP.Host)
	if err != nil {
		log.Printf("[Email] 创建 SMTP 客户端失败: %v", err)
		return err
	}
	defer client.Close()

	// 认证
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err = client.Auth(auth); err != nil {
				log.Printf("[Email] SMTP认证失败: %v", err)
				return err
			}
		}
	}

	// 发送流程
	if err = client.Mail(from); err != nil {
		log.Printf("[Email] MAIL FROM 命令失败: %v", err)
		return err
	}
	for _, addr := range to {
		if err = client.Rcpt(addr); err != nil {
			// 不记录具体邮箱地址，防止日志泄露敏感信息
			log.Printf("[Email] RCPT TO 命令失败: %v", err)
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		log.Printf("[Email] DATA 命令失败: %v", err)
		return err
	}
	if _, err = w.Write(msg); err != nil {
		log.Printf("[Email] 写入邮件内容失败: %v", err)
		return err
	}
	if err = w.Close(); err != nil {
		log.Printf("[Email] 关闭数据流失败: %v", err)
		return err
	}

	return client.Quit()
}

func parseAddressForHeader(input string) (string, string, error) {
	if err := rejectCRLF(input, "address"); err != nil {
		return "", "", err
	}

	addr, err := mail.ParseAddress(input)
	if err != nil {
		return "", "", err
	}

	headerValue := addr.String()
	if err := rejectCRLF(headerValue, "address"); err != nil {
		return "", "", err
	}

	return headerValue, addr.Address, nil
}

func buildEmailMessage(fromHeader, toHeader, subject, body string) ([]byte, error) {
	if err := rejectCRLF(subject, "subject"); err != nil {
		return nil, err
	}
	// 对 Subject 进行 MIME 编码，防止中文乱码或被拒收
	encodedSubject := mime.BEncoding.Encode("UTF-8", subject)
	dateStr := time.Now().Format(time.RFC1123Z)

	header := fmt.Sprintf("Date: %s\r\nFrom: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		dateStr, fromHeader, toHeader, encodedSubject)
	return []byte(header + body), nil
}

func rejectCRLF(value string, field string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("invalid %s header: CRLF not allowed", field)
	}
	return nil
}
