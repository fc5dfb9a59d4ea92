package generator

import (
	"fmt"

	"sellerbot/internal/domain"
)

// DescriptionPrompt builds the product-description instruction. Wildberries
// gets a long SEO-oriented text, Ozon a short benefit-led one. The caller
// guarantees the marketplace is valid; anything else yields an empty string.
func DescriptionPrompt(productInfo, marketplace string) string {
	switch marketplace {
	case domain.MarketplaceWildberries:
		return fmt.Sprintf("Напиши длинное SEO-оптимизированное описание для товара '%s' с ключевыми словами в начале текста.", productInfo)
	case domain.MarketplaceOzon:
		return fmt.Sprintf("Напиши краткое и структурированное описание для товара '%s' с выделением преимуществ.", productInfo)
	default:
		return ""
	}
}

// ReviewReplyPrompt builds the reply instruction for a customer review or
// question. The flavor does not change the instruction.
func ReviewReplyPrompt(reviewText, productInfo string) string {
	return fmt.Sprintf("Сгенерируй вежливый и профессиональный ответ на отзыв: '%s' для товара '%s'.", reviewText, productInfo)
}

// KeywordsPrompt builds the keyword-analysis instruction
func KeywordsPrompt(topic string) string {
	return fmt.Sprintf("Проанализируй популярные запросы для товара '%s'. Верни список ключевых слов с частотностью и примерами использования.", topic)
}
