package service

import (
	"Marche/dao"
	"Marche/types"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// AddressResolver 地址解析协作方契约：返回规范化地址或校验错误表。
// 错误表非空时结账在任何库存占用之前就失败
type AddressResolver interface {
	Resolve(ctx context.Context, in types.AddressInput) (*types.ResolvedAddress, map[string]string, error)
}

// PrefectureAddressResolver 默认实现：都道府县查表校验 + 运费带出
type PrefectureAddressResolver struct {
	PrefectureDAO *dao.Prefecture
}

var _ AddressResolver = (*PrefectureAddressResolver)(nil)

func (r *PrefectureAddressResolver) Resolve(ctx context.Context, in types.AddressInput) (*types.ResolvedAddress, map[string]string, error) {
	fieldErrs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fieldErrs["name"] = "收货人不能为空"
	}
	if in.PrefectureID == nil {
		fieldErrs["prefecture_id"] = "都道府县不能为空"
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	pref, err := r.PrefectureDAO.FindById(ctx, *in.PrefectureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fieldErrs["prefecture_id"] = "都道府县不存在"
			return nil, fieldErrs, nil
		}
		return nil, nil, err
	}

	full := strings.TrimSpace(fmt.Sprintf("%s %s %s %s", in.PostalCode, pref.Name, in.City, in.Street))
	return &types.ResolvedAddress{
		Name:         in.Name,
		FullAddress:  full,
		RegionID:     pref.RegionID,
		PrefectureID: pref.ID,
		ShippingFee:  pref.ShippingFee,
	}, nil, nil
}
