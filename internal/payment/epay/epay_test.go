package epay

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetConfig(t *testing.T) {
	d := NewEpayDriver()

	err := d.SetConfig(map[string]interface{}{
		"url": "https://pay.example.com/",
		"pid": "1001",
		"key": "secret",
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/submit.php", d.GatewayURL)
	assert.Equal(t, "1001", d.PID)

	// Numeric pid from decoded JSON
	err = d.SetConfig(map[string]interface{}{
		"url": "https://pay.example.com",
		"pid": float64(1001),
		"key": "secret",
	})
	assert.NoError(t, err)
	assert.Equal(t, "1001", d.PID)

	err = d.SetConfig(map[string]interface{}{"pid": "1001", "key": "secret"})
	assert.Error(t, err)
}

func TestPay_SignedURL(t *testing.T) {
	d := NewEpayDriver()
	d.SetConfig(map[string]interface{}{
		"url": "https://pay.example.com",
		"pid": "1001",
		"key": "secret",
	})

	jumpURL, err := d.Pay("order123", 50.0, "https://shop.example.com/notify/u", "https://shop.example.com/return", map[string]interface{}{
		"type": "wxpay",
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(jumpURL, "https://pay.example.com/submit.php?"))

	parsed, err := url.Parse(jumpURL)
	assert.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "order123", q.Get("out_trade_no"))
	assert.Equal(t, "50.00", q.Get("money"))
	assert.Equal(t, "wxpay", q.Get("type"))
	assert.Equal(t, "MD5", q.Get("sign_type"))
	assert.NotEmpty(t, q.Get("sign"))
}

func TestNotify_VerifiesSignature(t *testing.T) {
	d := NewEpayDriver()
	d.SetConfig(map[string]interface{}{
		"url": "https://pay.example.com",
		"pid": "1001",
		"key": "secret",
	})

	params := map[string]string{
		"pid":          "1001",
		"out_trade_no": "order123",
		"trade_no":     "gw-777",
		"money":        "50.00",
		"trade_status": "TRADE_SUCCESS",
	}
	sign := d.generateSign(params)

	notifyParams := map[string]interface{}{
		"pid":          "1001",
		"out_trade_no": "order123",
		"trade_no":     "gw-777",
		"money":        "50.00",
		"trade_status": "TRADE_SUCCESS",
		"sign":         sign,
		"sign_type":    "MD5",
	}

	ok, orderID, externalID, err := d.Notify(notifyParams)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "order123", orderID)
	assert.Equal(t, "gw-777", externalID)

	// Tampered amount fails verification
	notifyParams["money"] = "500.00"
	ok, _, _, err = d.Notify(notifyParams)
	assert.False(t, ok)
	assert.Error(t, err)
}
