package notification

import (
	notifevent "github.com/redacok/redacok-backend/internal/application/notification/event"
)

type App struct {
	Event *notifevent.Handler
}

type Args struct {
	MailSender notifevent.MailSender
	SMSSender  notifevent.SMSSender
	UserGetter notifevent.UserGetter
}

func NewApp(args Args) *App {
	return &App{
		Event: notifevent.NewHandler(notifevent.HandlerArgs{
			MailSender: args.MailSender,
			SMSSender:  args.SMSSender,
			UserGetter: args.UserGetter,
		}),
	}
}
