package views

// Static site copy for the public pages.

var navLinks = []NavLink{
	{Name: "Sobre", Href: "#about"},
	{Name: "Serviços", Href: "#services"},
	{Name: "Processo", Href: "#portfolio"},
	{Name: "Contato", Href: "#contact"},
	{Name: "Blog", Href: "/blog"},
	{Name: "Área restrita", Href: "/admin"},
}

var services = []Service{
	{
		Title:       "Gestão de Mídias Sociais",
		Description: "Criamos e gerenciamos conteúdo estratégico para engajar seu público, fortalecer sua marca e gerar resultados reais nas principais redes sociais.",
	},
	{
		Title:       "Anúncios Online (Tráfego Pago)",
		Description: "Planejamos e executamos campanhas de anúncios de alta performance no Google, Instagram, Facebook e LinkedIn para atrair clientes qualificados.",
	},
	{
		Title:       "Captação de Conteúdo",
		Description: "Produzimos fotos e vídeos profissionais que contam a história da sua marca, criando material autêntico e de alta qualidade para suas redes sociais.",
	},
	{
		Title:       "Desenvolvimento Web",
		Description: "Construímos sites e landing pages modernos, responsivos e otimizados para conversão, proporcionando a melhor experiência para o seu usuário.",
	},
}

var processSteps = []ProcessStep{
	{
		Number:      1,
		Title:       "Discovery e Estratégia",
		Description: "Mergulhamos no seu negócio para entender seus desafios e objetivos, traçando um plano de marketing digital 100% personalizado.",
	},
	{
		Number:      2,
		Title:       "Execução Criativa",
		Description: "Colocamos a mão na massa com criatividade e tecnologia, criando campanhas, conteúdos e anúncios que capturam a atenção e gerem conversões.",
	},
	{
		Number:      3,
		Title:       "Análise e Otimização",
		Description: "Monitoramos os resultados em tempo real, analisando dados para otimizar continuamente as estratégias e maximizar seu ROI.",
	},
}

var socialLinks = []SocialLink{
	{Name: "Instagram", Initial: "I", Href: "https://www.instagram.com/4ftech/"},
	{Name: "Facebook", Initial: "F", Href: "https://www.facebook.com/profile.php?id=61556419645060"},
	{Name: "LinkedIn", Initial: "L", Href: "https://www.linkedin.com/company/4ftech/"},
}
