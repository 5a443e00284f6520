package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// Desktop raises a tray-style OS notification.
type Desktop struct {
	AppName string
}

func NewDesktop(appName string) *Desktop {
	if appName == "" {
		appName = "CRM Ping Monitor"
	}
	return &Desktop{AppName: appName}
}

func (d *Desktop) Send(ctx context.Context, title, text string) error {
	return beeep.Notify(d.AppName+": "+title, text, "")
}
