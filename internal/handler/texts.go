package handler

// Callback data tags for menu buttons
const (
	cbChooseMarketplace = "choose_marketplace"
	cbMarketplaceWB     = "wildberries"
	cbMarketplaceOzon   = "ozon"
	cbMainMenu          = "main_menu"
	cbDescribe          = "describe"
	cbKeywords          = "keywords"
	cbReviewsSubmenu    = "reviews_submenu"
	cbReviewReply       = "generate_review_response"
	cbQuestionReply     = "generate_question_response"
	cbPayment           = "payment"
	cbProfile           = "profile"
	cbInstructions      = "instructions"
)

// User-facing texts. Kept in one place so handlers and tests agree on the
// exact wording.
const (
	textStart = "Привет! Я помощник для селлеров Wildberries и Ozon.\n" +
		"У тебя есть 3 бесплатных генерации.\n" +
		"Нажми 'Начать использование', чтобы выбрать маркетплейс и начать работать."

	textChooseMarketplace = "Выберите маркетплейс:"

	textMainMenu = "Вы в главном меню. Текущий маркетплейс: %s"

	textDescribeInput = "Введите характеристики товара (например, 'платье красное, размеры S-XXL, материал — шифон')"

	textKeywordsInput = "Введите тематику товара (например, 'спортивные футболки')"

	textReviewsSubmenu = "Выберите тип ответа:"

	textReviewInput = "Введите текст негативного отзыва:"

	textQuestionInput = "Введите текст вопроса:"

	textProductInfoInput = "Введите информацию о товаре (например, 'платье красное, размеры S-XXL, материал — шифон'):"

	textQuotaExhausted = "У вас закончились бесплатные запросы. Перейдите в 'Оплата и тарифы' для покупки подписки."

	textGenerationFailed = "Ошибка генерации. Попробуйте позже."

	textNoProfile = "Сначала выберите маркетплейс. Отправьте /start и нажмите 'Начать использование'."

	textUseMenu = "Воспользуйтесь кнопками меню, чтобы выбрать функцию. Отправьте /start, если меню не видно."

	textRateLimited = "Слишком много запросов. Подождите немного и попробуйте снова."

	textPayment = "Тарифы:\n" +
		"Бесплатный: 3 запроса (для знакомства с функционалом)\n" +
		"Премиум: 500 руб/мес → 150 запросов, полный доступ ко всем функциям, приоритетная поддержка\n" +
		"Кнопка 'Купить подписку' будет доступна после интеграции с платежной системой."

	textProfile = "Ваш профиль:\n" +
		"Статус тарифа: %s\n" +
		"Остаток запросов: %d/3\n" +
		"Подписка до: %s\n" +
		"Всего генераций: %d"

	textInstructions = "Как использовать функции:\n" +
		"1. Генерация описаний: введите характеристики товара, и бот предложит 3 варианта.\n" +
		"2. Анализ ключевых слов: введите тематику товара, и бот вернет популярные запросы.\n" +
		"3. Ответы на отзывы: введите текст отзыва и информацию о товаре, и бот сгенерирует ответ."
)

// Button labels
const (
	btnStartUsing   = "Начать использование"
	btnWildberries  = "Wildberries"
	btnOzon         = "Ozon"
	btnDescribe     = "Генерация описаний"
	btnKeywords     = "Анализ ключевых слов"
	btnReviews      = "Генерация ответов на отзывы и вопросы"
	btnInstructions = "Как пользоваться"
	btnPayment      = "Оплата и тарифы"
	btnProfile      = "Профиль"
	btnReviewReply  = "Ответы на отзывы"
	btnQuestion     = "Ответы на вопросы"
	btnBack         = "Назад"
)
