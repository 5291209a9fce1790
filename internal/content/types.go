package content

import (
	"fmt"
	"strings"
)

// ContentType 生成内容的类型
type ContentType string

const (
	ContentTypeBlog   ContentType = "blog"
	ContentTypeSocial ContentType = "social"
	ContentTypeEmail  ContentType = "email"
	ContentTypeAd     ContentType = "ad"
)

// Tone 生成内容的语气
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
)

// Length 生成内容的篇幅
type Length string

const (
	LengthSmall  Length = "small"
	LengthMedium Length = "medium"
	LengthLarge  Length = "large"
)

// 各选项按表单中的展示顺序排列
var (
	ContentTypes = []ContentType{ContentTypeBlog, ContentTypeSocial, ContentTypeEmail, ContentTypeAd}
	Tones        = []Tone{ToneProfessional, ToneFriendly}
	Lengths      = []Length{LengthSmall, LengthMedium, LengthLarge}
)

var contentTypeLabels = map[ContentType]string{
	ContentTypeBlog:   "Blog Post",
	ContentTypeSocial: "Social Media",
	ContentTypeEmail:  "Email",
	ContentTypeAd:     "Advertisement",
}

var toneLabels = map[Tone]string{
	ToneProfessional: "Professional",
	ToneFriendly:     "Friendly",
}

// WordRange 篇幅对应的目标字数区间
type WordRange struct {
	Min int
	Max int
}

var lengthRanges = map[Length]WordRange{
	LengthSmall:  {Min: 50, Max: 100},
	LengthMedium: {Min: 100, Max: 200},
	LengthLarge:  {Min: 200, Max: 300},
}

// Label 返回用于界面展示的名称
func (c ContentType) Label() string {
	if l, ok := contentTypeLabels[c]; ok {
		return l
	}
	return string(c)
}

func (t Tone) Label() string {
	if l, ok := toneLabels[t]; ok {
		return l
	}
	return string(t)
}

func (l Length) Label() string {
	r, ok := lengthRanges[l]
	if !ok {
		return string(l)
	}
	name := string(l)
	return fmt.Sprintf("%s%s (%d-%d words)", strings.ToUpper(name[:1]), name[1:], r.Min, r.Max)
}

// Words 返回篇幅对应的字数区间。未知篇幅按 large 处理，与服务端保持一致。
func (l Length) Words() WordRange {
	if r, ok := lengthRanges[l]; ok {
		return r
	}
	return lengthRanges[LengthLarge]
}

// FormInput 用户选择的生成参数
type FormInput struct {
	Topic       string      `json:"topic" validate:"notblank"`
	ContentType ContentType `json:"contentType" validate:"oneof=blog social email ad"`
	Tone        Tone        `json:"tone" validate:"oneof=professional friendly"`
	Length      Length      `json:"length" validate:"oneof=small medium large"`
}

// DefaultFormInput 返回表单初始状态
func DefaultFormInput() FormInput {
	return FormInput{
		ContentType: ContentTypeEmail,
		Tone:        ToneProfessional,
		Length:      LengthSmall,
	}
}

// Normalized 返回去除首尾空白后的副本
func (f FormInput) Normalized() FormInput {
	f.Topic = strings.TrimSpace(f.Topic)
	return f
}

// Prompt 构造发送给模型的提示词
func (f FormInput) Prompt() string {
	r := f.Length.Words()
	return fmt.Sprintf("Write a %s %s about %s around %d - %d words", f.Tone, f.ContentType, f.Topic, r.Min, r.Max)
}

// GenerationResult 远端服务返回的文本及统计
type GenerationResult struct {
	Content   string
	WordCount int
	CharCount int
}

// Empty 是否还没有可展示的内容
func (r GenerationResult) Empty() bool {
	return r.Content == ""
}
