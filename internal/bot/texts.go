package bot

// User-facing texts. The service speaks Russian to match its audience.
const (
	textWelcome      = "Добро пожаловать! Нажмите кнопку ниже, чтобы начать."
	textWelcomeAdmin = "Добро пожаловать, администратор! Нажмите кнопку ниже, чтобы начать."
	textMainMenu     = "Выберите действие из меню:"
	textServices     = "Выберите услугу:"

	textAskFullName = "Пожалуйста, введите ваше полное имя:"
	textAskAddress  = "Введите Ваш адрес:"
	textAskPhone    = "Введите Ваш телефон:"
	textAskReason   = "Введите причину обращения:"

	textAskRequestID       = "Введите номер Вашей ID Заявки:"
	textAskStatusRequestID = "Введите номер Вашей ID Заявки для просмотра статуса:"
	textAskAdminRequestID  = "Введите номер Вашей ID Заявки для изменения статуса:"
	textAskCancelRequestID = "Введите номер Вашей ID Заявки для отмены:"
	textAskFeedbackID      = "Введите номер Вашей ID Заявки для отзыва:"
	textAskFeedback        = "Напишите Ваш отзыв:"

	textBadRequestID = "Неверный ID заявки. Пожалуйста, введите корректный номер ID."
	textBadPhone     = "Некорректный номер телефона. Введите номер в международном формате, например +79161234567."
	textBadAddress   = "Адрес слишком короткий. Пожалуйста, введите полный адрес."

	textChooseEditField = "Выберите, что вы хотите изменить:"
	textAskNewName      = "Введите новое имя:"
	textAskNewAddress   = "Введите новый адрес:"
	textAskNewPhone     = "Введите новый номер телефона:"
	textAskNewReason    = "Введите новую причину обращения:"
	textSaveFailed      = "Произошла ошибка. Попробуйте позже."
	textChooseNewStatus = "Выберите новый статус заявки:"

	textOrderCancelled  = "Заявка отменена."
	textFeedbackThanks  = "Спасибо за Ваш отзыв!"
	textNoOrders        = "Нет новых заявок."
	textTooManyRequests = "Слишком много запросов. Пожалуйста, подождите."

	textAskNewAdminID   = "Введите ID пользователя, которого нужно сделать администратором:"
	textBadAdminID      = "Некорректный ID пользователя. Введите числовой Telegram ID."
	textAdminAdded      = "Администратор добавлен."
	textAdminExists     = "Этот пользователь уже администратор."
	textAdminRemoved    = "Администратор удален."
	textAdminNotInList  = "Этот пользователь не является администратором."
	textChooseAdmin     = "Выберите администратора для удаления:"
	textAccessDenied    = "Эта команда доступна только администраторам."

	textFAQ = "❓ Часто задаваемые вопросы:\n\n" +
		"1. Как оформить заявку?\nНажмите «Оформить заявку» и следуйте подсказкам.\n\n" +
		"2. Как узнать статус заявки?\nНажмите «Статус заявки» и введите её номер.\n\n" +
		"3. Как изменить данные заявки?\nНажмите «Редактировать заявку» и выберите поле.\n\n" +
		"4. Как отменить заявку?\nОткройте «Услуги» и выберите «Отменить заявку»."

	textServiceComputers = "💻 Компьютерная помощь: диагностика, ремонт и настройка техники. Оформите заявку, и мастер свяжется с Вами."
	textServiceMounting  = "🔧 Монтажные работы: прокладка сетей, установка оборудования. Оформите заявку с описанием задачи."
	textServiceVisit     = "🚗 Выезд мастера на дом. Оформите заявку, укажите адрес и удобное время в причине обращения."
)
