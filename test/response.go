package test

import (
	"encoding/json"
	"testing"

	"campus-connect/internal/global/response"

	"github.com/stretchr/testify/require"
)

func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.Equal(t, expected.Code, resp.Code)
	require.Equal(t, expected.Message, resp.Msg)
}

// CodeEqual 只比较错误码，用于带具体提示文案的错误
func CodeEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.Equal(t, expected.Code, resp.Code)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	require.Equal(t, int32(200), resp.Code)
}

// DecodeData 将响应 Data 解析到目标结构体
func DecodeData(t *testing.T, resp response.ResponseBody, target any) {
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}
