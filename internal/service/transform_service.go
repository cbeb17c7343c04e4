package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"photo-shake-server/internal/common"
	"photo-shake-server/internal/consts"
	"photo-shake-server/internal/db"
	"photo-shake-server/internal/model"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// 转换编译器：把五组独立开关的滤镜请求编译为有序的图床原语操作列表。
// 每组由自身的 use_filter 开关与必要参数共同门控，缺参数时静默跳过该组。

type CircleFilter struct {
	UseFilter bool `json:"use_filter"`
	Height    int  `json:"height"`
	Width     int  `json:"width"`
}

type EffectFilter struct {
	UseFilter  bool `json:"use_filter"`
	ArtAudrey  bool `json:"art_audrey"`
	ArtZorro   bool `json:"art_zorro"`
	Blur       bool `json:"blur"`
	Cartoonify bool `json:"cartoonify"`
}

type ResizeFilter struct {
	UseFilter bool `json:"use_filter"`
	Crop      bool `json:"crop"`
	Fill      bool `json:"fill"`
	Height    int  `json:"height"`
	Width     int  `json:"width"`
}

type TextFilter struct {
	UseFilter bool   `json:"use_filter"`
	FontSize  int    `json:"font_size"`
	Text      string `json:"text"`
}

type RotateFilter struct {
	UseFilter bool `json:"use_filter"`
	Width     int  `json:"width"`
	Degree    int  `json:"degree"`
	// Flip 为空时保持历史行为（旋转前总是垂直翻转），
	// 显式 false 时省略翻转
	Flip *bool `json:"flip,omitempty"`
}

type TransformBody struct {
	Circle CircleFilter `json:"circle"`
	Effect EffectFilter `json:"effect"`
	Resize ResizeFilter `json:"resize"`
	Text   TextFilter   `json:"text"`
	Rotate RotateFilter `json:"rotate"`
}

// TextOverlay 文字叠加层参数
type TextOverlay struct {
	FontFamily string
	FontSize   int
	FontWeight string
	Text       string
}

// TransformOp 单个图床原语操作描述符，零值字段不参与序列化
type TransformOp struct {
	Angle   string
	Color   string
	Crop    string
	Effect  string
	Flags   string
	Gravity string
	Height  int
	Overlay *TextOverlay
	Radius  string
	Width   int
	Y       *int
}

// Component 按图床 URL 语法序列化为单个转换段，参数按字典序排列
func (op TransformOp) Component() string {
	var parts []string
	if op.Angle != "" {
		parts = append(parts, "a_"+op.Angle)
	}
	if op.Crop != "" {
		parts = append(parts, "c_"+op.Crop)
	}
	if op.Color != "" {
		parts = append(parts, "co_"+encodeColor(op.Color))
	}
	if op.Effect != "" {
		parts = append(parts, "e_"+op.Effect)
	}
	if op.Flags != "" {
		parts = append(parts, "fl_"+op.Flags)
	}
	if op.Gravity != "" {
		parts = append(parts, "g_"+op.Gravity)
	}
	if op.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(op.Height))
	}
	if op.Overlay != nil {
		parts = append(parts, fmt.Sprintf("l_text:%s_%d_%s:%s",
			op.Overlay.FontFamily, op.Overlay.FontSize, op.Overlay.FontWeight, encodeOverlayText(op.Overlay.Text)))
	}
	if op.Radius != "" {
		parts = append(parts, "r_"+op.Radius)
	}
	if op.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(op.Width))
	}
	if op.Y != nil {
		parts = append(parts, "y_"+strconv.Itoa(*op.Y))
	}
	return strings.Join(parts, ",")
}

func encodeColor(color string) string {
	if strings.HasPrefix(color, "#") {
		return "rgb:" + color[1:]
	}
	return color
}

func encodeOverlayText(text string) string {
	r := strings.NewReplacer(
		"%", "%25",
		" ", "%20",
		",", "%2C",
		"/", "%2F",
	)
	return r.Replace(text)
}

// BuildTransformation 将有序操作列表拼接为完整转换串
func BuildTransformation(ops []TransformOp) string {
	components := make([]string, 0, len(ops))
	for _, op := range ops {
		components = append(components, op.Component())
	}
	return strings.Join(components, "/")
}

// CompileTransformation 逐组编译转换请求。
// 组间顺序固定：圆形裁剪、效果、缩放、文字、旋转。
func CompileTransformation(body TransformBody) []TransformOp {
	var ops []TransformOp

	if body.Circle.UseFilter && body.Circle.Height > 0 && body.Circle.Width > 0 {
		ops = append(ops,
			TransformOp{Gravity: "face", Height: body.Circle.Height, Width: body.Circle.Width, Crop: "thumb"},
			TransformOp{Radius: "max"},
		)
	}

	if body.Effect.UseFilter {
		// 按固定顺序依次覆盖，后检查的效果生效
		effect := ""
		if body.Effect.ArtAudrey {
			effect = "art:audrey"
		}
		if body.Effect.ArtZorro {
			effect = "art:zorro"
		}
		if body.Effect.Blur {
			effect = "blur:300"
		}
		if body.Effect.Cartoonify {
			effect = "cartoonify"
		}
		if effect != "" {
			ops = append(ops, TransformOp{Effect: effect})
		}
	}

	if body.Resize.UseFilter && body.Resize.Height > 0 && body.Resize.Width > 0 {
		// crop 与 fill 必须恰好设置一个，同时设置或均未设置则跳过该组
		if body.Resize.Crop != body.Resize.Fill {
			crop := "crop"
			if body.Resize.Fill {
				crop = "fill"
			}
			ops = append(ops, TransformOp{Gravity: "auto", Height: body.Resize.Height, Width: body.Resize.Width, Crop: crop})
		}
	}

	if body.Text.UseFilter && body.Text.FontSize > 0 && body.Text.Text != "" {
		y := 20
		ops = append(ops,
			TransformOp{Color: "#FFFF00", Overlay: &TextOverlay{
				FontFamily: "Times",
				FontSize:   body.Text.FontSize,
				FontWeight: "bold",
				Text:       body.Text.Text,
			}},
			TransformOp{Flags: "layer_apply", Gravity: "south", Y: &y},
		)
	}

	if body.Rotate.UseFilter && body.Rotate.Width > 0 && body.Rotate.Degree != 0 {
		ops = append(ops, TransformOp{Width: body.Rotate.Width, Crop: "scale"})
		if body.Rotate.Flip == nil || *body.Rotate.Flip {
			ops = append(ops, TransformOp{Angle: "vflip"})
		}
		ops = append(ops, TransformOp{Angle: strconv.Itoa(body.Rotate.Degree)})
	}

	return ops
}

// TransformFoto 编译转换请求并向图床请求渲染 URL。
// 为空的操作列表不触发外部调用，照片保持不变。
// 照片不存在与非本人所有同样返回不存在，不单独区分。
func TransformFoto(fotoID uint, body TransformBody, user *model.User) (*model.Foto, error) {
	var foto model.Foto
	err := db.DB.Where("user_id = ? AND id = ?", user.ID, fotoID).First(&foto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError(consts.MsgNotFound)
		}
		log.Printf("Transform query error: %v\n", err)
		return nil, common.NewInternalError("查询照片失败")
	}

	ops := CompileTransformation(body)
	if len(ops) == 0 {
		return &foto, nil
	}

	url, err := CDNBuildURL(foto.PublicID, BuildTransformation(ops))
	if err != nil {
		log.Printf("CDN build url error: %v\n", err)
		return nil, common.NewInternalError("图床转换失败")
	}

	if err := db.DB.Model(&foto).Update("transform_url", url).Error; err != nil {
		log.Printf("Transform update error: %v\n", err)
		return nil, common.NewInternalError("保存转换结果失败")
	}
	foto.TransformURL = url
	return &foto, nil
}

// ShowQR 将照片当前的转换 URL 编码为二维码 PNG 并以 base64 返回。
// 纯读操作，不记录任何状态。
func ShowQR(fotoID uint, user *model.User) (string, error) {
	var foto model.Foto
	err := db.DB.Where("user_id = ? AND id = ?", user.ID, fotoID).First(&foto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", common.NewNotFoundError(consts.MsgNotFound)
		}
		log.Printf("QR query error: %v\n", err)
		return "", common.NewInternalError("查询照片失败")
	}

	if foto.TransformURL == "" {
		return "", common.NewNotFoundError(consts.MsgNotFound)
	}

	png, err := qrcode.Encode(foto.TransformURL, qrcode.Medium, 256)
	if err != nil {
		log.Printf("QR encode error: %v\n", err)
		return "", common.NewInternalError("二维码生成失败")
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
