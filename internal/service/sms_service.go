package service

import (
	"log"

	"parking_admin/internal/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService bọc SDK Twilio. Thiếu thông tin đăng nhập thì client để nil
// và mọi tin nhắn được bỏ qua thay vì báo lỗi.
type SMSService struct {
	client *twilio.RestClient
	from   string
}

func NewSMSService(cfg *config.Config) *SMSService {
	var client *twilio.RestClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return &SMSService{client: client, from: cfg.TwilioFrom}
}

func (s *SMSService) Send(to string, body string) (bool, error) {
	if s.client == nil {
		log.Printf("Twilio chưa được cấu hình, bỏ qua SMS tới %s", to)
		return true, nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return false, err
}
