package services

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrCloudinaryNotConfigured is returned when the tenant settings lack
// Cloudinary credentials.
var ErrCloudinaryNotConfigured = errors.New("cloudinary is not configured")

// CloudinarySignature authorizes one direct browser upload to Cloudinary.
type CloudinarySignature struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
}

// SignCloudinaryUpload produces the signed parameter set for a direct
// upload. Cloudinary's scheme: hex(sha1("k1=v1&k2=v2..." + apiSecret))
// over the alphabetically sorted parameters.
func SignCloudinaryUpload(cloudName, apiKey, apiSecret, folder string, now time.Time) (CloudinarySignature, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return CloudinarySignature{}, ErrCloudinaryNotConfigured
	}
	ts := now.Unix()
	params := map[string]string{
		"timestamp": fmt.Sprintf("%d", ts),
	}
	if folder != "" {
		params["folder"] = folder
	}
	return CloudinarySignature{
		CloudName: cloudName,
		APIKey:    apiKey,
		Timestamp: ts,
		Folder:    folder,
		Signature: cloudinaryDigest(params, apiSecret),
	}, nil
}

func cloudinaryDigest(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + apiSecret))
	return hex.EncodeToString(sum[:])
}
