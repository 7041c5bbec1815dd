package i18n

var ar = map[string]string{
	"coach.variety_good": "تنوع رائع! استخدمت %d أنواع من البروتين هذا الأسبوع.",
	"coach.variety_low":  "جرّب إضافة بروتين آخر غداً للحفاظ على التوازن.",
	"coach.organ_low":    "نسبة الأعضاء منخفضة (%.0f%%)؛ فكّر في إضافة مكافآت من الأعضاء.",
	"coach.organ_high":   "نسبة الأعضاء مرتفعة (%.0f%%)؛ قلّل الأعضاء في الوجبة القادمة.",
	"coach.bone_low":     "نسبة العظم منخفضة (%.0f%%)؛ أضف مرق العظم أو عظمة لحمية في الوجبة القادمة.",
	"coach.bone_high":    "كثرة العظم (%.0f%%) قد تسبب الإمساك؛ أضف لحم العضل.",
	"coach.low_stock":    "المخزون منخفض: حوالي %.1f يوم متبقٍ. فكّر في الطلب قريباً.",
	"coach.treat":        "قدّم %d قطعة من %s كمكافأة اليوم.",

	"plan.title":      "وجبة اليوم لـ %s",
	"plan.target":     "الهدف: %.0f غ (%.1f%% من وزن الجسم)",
	"plan.total":      "المخطط: %.0f غ، المتبقي %.0f غ",
	"plan.macros":     "عضل %.0f%% / أعضاء %.0f%% / عظم %.0f%%",
	"plan.empty":      "لا يوجد في المخزون ما يناسب هدف اليوم.",
	"plan.confirmed":  "تم تسجيل الوجبة وتحديث المخزون.",
	"rotation.day":    "اليوم %d",
	"treats.none":     "لا توجد مكافآت متاحة.",
	"stock.empty":     "لا يوجد مخزون مسجل.",
	"stool.result":    "فحص البراز: %s (السطوع %.0f)",
	"stool.healthy":   "صحي",
	"stool.watch":     "راقب",
	"stool.vet":       "الطبيب البيطري",
	"pro.expired":     "انتهت صلاحية اشتراك برو.",
	"pro.active":      "اشتراك برو مفعل.",
	"pro.inactive":    "اشتراك برو غير مفعل.",
	"orders.summary":  "ملخص الطلب",
	"orders.greeting": "مرحباً %s،",
	"orders.intro":    "أود أن أطلب:",
	"orders.total":    "المجموع: %s",
	"storage.memory":  "التخزين غير متاح؛ يتم الاحتفاظ بالتغييرات في الذاكرة فقط.",
}
