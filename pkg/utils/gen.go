package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/speps/go-hashids/v2"
)

// GenerateOrderSn 生成业务订单号：时间精确到秒 + 雪花ID尾号
func GenerateOrderSn(prefix string, orderID int64) string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("%s%s%d", prefix, now, orderID%1000000)
}

// GenOrderRef 对外暴露的订单短码（小票/客服查询用），不泄露自增规律
func GenOrderRef(salt string, id int64) string {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	h, _ := hashids.NewWithData(hd)
	e, _ := h.EncodeInt64([]int64{id})
	return e
}

// MtRand 生成指定范围内的随机数
func MtRand(min, max int) int {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Intn(max-min+1) + min
}
