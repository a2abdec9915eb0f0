package service

// AssistantQuickReply 助手快捷回复项
type AssistantQuickReply struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

// AssistantConfig 店铺助手配置
type AssistantConfig struct {
	Greeting     string                `json:"greeting"`
	Placeholder  string                `json:"placeholder"`
	QuickReplies []AssistantQuickReply `json:"quickReplies"`
}

// AssistantService 店铺助手服务，配置为静态只读内容
type AssistantService struct{}

// NewAssistantService 创建助手服务
func NewAssistantService() *AssistantService {
	return &AssistantService{}
}

// GetConfig 返回助手配置
func (s *AssistantService) GetConfig() *AssistantConfig {
	return &AssistantConfig{
		Greeting:    "Hi! How can we help you today?",
		Placeholder: "Type your question...",
		QuickReplies: []AssistantQuickReply{
			{Label: "Opening hours", Message: "What are your opening hours?"},
			{Label: "Book a service", Message: "I would like to book an appointment."},
			{Label: "Order status", Message: "Where is my order?"},
			{Label: "Talk to a person", Message: "Can I speak with someone from the team?"},
		},
	}
}
